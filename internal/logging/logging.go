package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"go.lepovirta.org/intstack/internal/envvar"
)

type Config struct {
	Format     string     `json:"format"`
	Level      string     `json:"level"`
	FieldNames FieldNames `json:"fieldNames"`
	TimeFormat string     `json:"timeFormat"`
}

type FieldNames struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Level     string `json:"level"`
}

func (this *Config) FromEnv(appName string, envVars envvar.Vars) {
	this.Level = envVars.GetForApp(appName, "LOG_LEVEL")
	this.Format = envVars.GetForApp(appName, "LOG_FORMAT")
	this.TimeFormat = envVars.GetForApp(appName, "LOG_TIME_FORMAT")
	this.FieldNames.FromEnv(appName, envVars)
}

func (this *FieldNames) FromEnv(appName string, envVars envvar.Vars) {
	this.Timestamp = envVars.GetForAppOr(
		appName, "LOG_FIELD_TIMESTAMP", zerolog.TimestampFieldName,
	)
	this.Message = envVars.GetForAppOr(
		appName, "LOG_FIELD_MESSAGE", zerolog.MessageFieldName,
	)
	this.Level = envVars.GetForAppOr(
		appName, "LOG_FIELD_LEVEL", zerolog.LevelFieldName,
	)
}

// Logger builds a logger from the config. Problems in the config do not
// prevent building the logger; they are returned as warnings instead
// and defaults are used in their place.
func (this *Config) Logger(
	appName string,
	outStream io.Writer,
) (logger zerolog.Logger, warnings []string) {
	logger = zerolog.New(outStream).
		With().
		Timestamp().
		Str("app", appName).
		Logger()

	level, err := this.level()
	if err != nil {
		warnings = append(warnings, err.Error())
	}
	logger = logger.Level(level)

	output := logFormatToOutput(this.Format, outStream)
	if output != nil {
		logger = logger.Output(output)
	} else {
		warnings = append(warnings, fmt.Sprintf("unknown log format: %s", this.Format))
	}
	return
}

func (this *Config) SetupGlobal(
	appName string,
	outStream io.Writer,
) {
	// Logging fields
	if this.TimeFormat != "" {
		zerolog.TimeFieldFormat = this.TimeFormat
	}
	zerolog.TimestampFieldName = this.FieldNames.Timestamp
	zerolog.MessageFieldName = this.FieldNames.Message
	zerolog.LevelFieldName = this.FieldNames.Level

	logger, warnings := this.Logger(appName, outStream)
	zerolog.SetGlobalLevel(logger.GetLevel())
	zerolog.DefaultContextLogger = &logger

	for _, warning := range warnings {
		logger.Warn().Msg(warning)
	}
	logger.Debug().Msg("global logging setup done")
}

func (this *Config) level() (zerolog.Level, error) {
	if this.Level == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(this.Level)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %s", this.Level)
	}
	return level, nil
}

func logFormatToOutput(logFormat string, outStream io.Writer) io.Writer {
	switch strings.ToLower(logFormat) {
	case "json", "":
		return outStream
	case "pretty":
		return zerolog.ConsoleWriter{Out: outStream, NoColor: true}
	default:
		return nil
	}
}
