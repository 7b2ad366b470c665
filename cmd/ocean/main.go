package main

import (
	"errors"
	"os"
	"runtime"

	"AsylumOcean/internal/config"
	"AsylumOcean/internal/engine"
	"AsylumOcean/internal/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	logger.Init()
	defer logger.Sync()

	cfg, found, err := config.Load(config.DefaultPath)
	if err != nil {
		logger.Log.Error("Invalid configuration", zap.String("path", config.DefaultPath), zap.Error(err))
		return -1
	}
	if cfg.Render.Debug {
		logger.InitWithLevel(zapcore.DebugLevel)
	}
	logger.Log.Info("Asylum Ocean starting",
		zap.Bool("configFile", found),
		zap.String("shaderPolicy", string(cfg.Render.ShaderPolicy)))

	if err := engine.Run(cfg); err != nil {
		var initErr *engine.InitError
		if errors.As(err, &initErr) {
			logger.Log.Error("Startup failed", zap.String("step", initErr.Step), zap.Error(initErr.Err))
		} else {
			logger.Log.Error("Shader build failed", zap.Error(err))
		}
		return -1
	}

	logger.Log.Info("Asylum Ocean exited")
	return 0
}
