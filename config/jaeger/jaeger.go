package jaeger

import (
	"fmt"
	"io"

	"VidTube.com/config"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger 安装全局 tracer，关闭 jaeger 时返回 NoopTracer
func InitJaeger(service string) (opentracing.Tracer, io.Closer) {
	if !config.ConfigInfo.Jaeger.Enabled {
		return opentracing.NoopTracer{}, nopCloser{}
	}

	cfg := &jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           true,
			LocalAgentHostPort: config.ConfigInfo.Jaeger.AgentAddr,
		},
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		panic(fmt.Sprintf("ERROR: cannot init Jaeger: %v\n", err))
	}
	opentracing.SetGlobalTracer(tracer)
	logrus.Infof("jaeger tracer installed for %s -> %s", service, config.ConfigInfo.Jaeger.AgentAddr)
	return tracer, closer
}
