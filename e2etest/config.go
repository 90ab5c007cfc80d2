package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reithediver/lol-smurfguard-sub000/config"
)

// createTestConfig creates a test configuration and returns the path to the file
func createTestConfig(mockURL, port string) (string, error) {
	// Create a temporary directory for configuration
	tempDir, err := os.MkdirTemp("", "smurfguard-test")
	if err != nil {
		return "", err
	}

	// Create configuration file content
	configContent := `
riot:
  platform: kr
  region: asia
  api_key_file: "%s"
  override_platform_url: "%s"   # URL for platform routed endpoints (mock)
  override_regional_url: "%s"   # URL for regional routed endpoints (mock)

batch:
  concurrency_limit: 2
  chunk_delay: 1ms              # short delay for tests

retry:
  max_attempts: 2
  base_backoff: 10ms            # short backoff for tests

cache:
  durable:
    backend: file
    path: "%s"
    compaction_interval: 1m

server:
  port: "%s"

log_level: debug
`

	// Create API key file
	keyFilePath := filepath.Join(tempDir, "riot_api_key.txt")
	if err := os.WriteFile(keyFilePath, []byte(testAPIKey+"\n"), 0600); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	// Insert values into configuration
	configContent = sprintf(configContent, keyFilePath, mockURL, mockURL, filepath.Join(tempDir, "cache.json"), port)

	// Create configuration file
	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL, port string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL, port)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}

// sprintf - helper function for string formatting
func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
