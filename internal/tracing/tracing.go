package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"go.uber.org/zap"
	"max.ks1230/expense-tracker/internal/logger"
)

type config interface {
	Agent() string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Init installs a jaeger tracer sampling every span as the global tracer. Without an agent
// address the opentracing no-op tracer stays in place.
func Init(serviceName string, config config) (io.Closer, error) {
	if config.Agent() == "" {
		logger.Info("tracing disabled")
		return nopCloser{}, nil
	}

	cfg := jaegercfg.Configuration{
		ServiceName: serviceName,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: config.Agent(),
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(zapLogger{}))
	if err != nil {
		return nil, errors.Wrap(err, "cannot init tracing")
	}
	opentracing.SetGlobalTracer(tracer)
	logger.Info("tracing enabled", zap.String("agent", config.Agent()))
	return closer, nil
}

// zapLogger routes jaeger's own diagnostics to the service log.
type zapLogger struct{}

func (zapLogger) Error(msg string) {
	logger.Error("jaeger: " + msg)
}

func (zapLogger) Infof(msg string, args ...interface{}) {
	logger.Debug("jaeger", zap.String("msg", msg), zap.Any("args", args))
}
