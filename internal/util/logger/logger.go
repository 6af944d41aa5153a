package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log = zap.NewNop()

// Init builds the process logger. Output must not be stdout: the console
// dialogue owns it.
func Init(level, output string) error {
	logLevel := zapcore.WarnLevel
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(logLevel)
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true

	l, err := config.Build()
	if err != nil {
		return err
	}
	Log = l

	return nil
}

func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}
