package config

import (
	"github.com/caarlos0/env"

	"github.com/ReconfigureIO/hlsflow/service/convert"
	"github.com/ReconfigureIO/hlsflow/service/render"
	"github.com/ReconfigureIO/hlsflow/service/storage/s3"
)

type Config struct {
	ProgramName string        `env:"HLSFLOW_NAME" envDefault:"hlsflow"`
	Flow        HLSFlowConfig `env:"HLSFLOW"`
}

type HLSFlowConfig struct {
	Env         string `env:"HLSFLOW_ENV" envDefault:"development"`
	LogLevel    string `env:"HLSFLOW_LOG_LEVEL" envDefault:"info"`
	LogzioToken string `env:"LOGZIO_TOKEN"`
	Convert     convert.ServiceConfig
	Render      render.ServiceConfig
	Storage     s3.ServiceConfig
}

func ParseEnvConfig() (*Config, error) {
	conf := Config{}

	err := env.Parse(&conf)
	if err != nil {
		return nil, err
	}

	err = env.Parse(&conf.Flow)
	if err != nil {
		return nil, err
	}

	err = env.Parse(&conf.Flow.Convert)
	if err != nil {
		return nil, err
	}

	err = env.Parse(&conf.Flow.Render)
	if err != nil {
		return nil, err
	}

	err = env.Parse(&conf.Flow.Storage)
	if err != nil {
		return nil, err
	}

	return &conf, nil
}
