package logging

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logDirPerm = 0o755

// New builds the application logger: console output plus a daily file under
// dir. If the log directory cannot be prepared the file sink is skipped and
// logging stays console-only.
func New(dev bool, dir string) (*zap.Logger, error) {
	var encCfg zapcore.EncoderConfig
	level := zap.InfoLevel
	if dev {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zap.DebugLevel
	} else {
		encCfg = zap.NewProductionEncoderConfig()
	}
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}

	if dir != "" {
		if err := os.MkdirAll(dir, logDirPerm); err == nil {
			name := "server_" + time.Now().Format("2006-01-02") + ".log"
			f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err == nil {
				fileEnc := zap.NewProductionEncoderConfig()
				fileEnc.EncodeTime = zapcore.ISO8601TimeEncoder
				cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEnc), zapcore.AddSync(f), zap.InfoLevel))
			}
		}
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}
