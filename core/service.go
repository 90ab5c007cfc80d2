package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Interface is a component with a start/stop lifecycle
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

// Registry starts components in registration order and stops them in reverse
type Registry struct {
	services []Interface
	logger   *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		services: make([]Interface, 0),
		logger:   logger.Named("registry"),
	}
}

// Register appends service to the start order
func (sr *Registry) Register(service Interface) {
	sr.services = append(sr.services, service)
	sr.logger.Debug("service registered", zap.String("service", serviceName(service)))
}

// StartAll starts services in order and stops at the first failure.
// Services started before the failure keep running; call StopAll to release them.
func (sr *Registry) StartAll(ctx context.Context) error {
	for _, service := range sr.services {
		name := serviceName(service)
		if err := service.Start(ctx); err != nil {
			sr.logger.Error("service failed to start", zap.String("service", name), zap.Error(err))
			return fmt.Errorf("start %s: %w", name, err)
		}
		sr.logger.Info("service started", zap.String("service", name))
	}
	return nil
}

// StopAll stops services in reverse registration order
func (sr *Registry) StopAll() {
	for i := len(sr.services) - 1; i >= 0; i-- {
		sr.services[i].Stop()
		sr.logger.Debug("service stopped", zap.String("service", serviceName(sr.services[i])))
	}
}

func serviceName(service Interface) string {
	return fmt.Sprintf("%T", service)
}
