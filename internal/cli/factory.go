package cli

import (
	"github.com/charmbracelet/log"

	"todo/internal/codec"
	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/store"
)

// OpenFileStore is the production ServiceFactory: it loads the tasks
// file named by cfg into a store.
func OpenFileStore(cfg *config.Config, logger *log.Logger) (service.Service, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, err
	}
	file := codec.NewFile(cfg.TasksPath(), codec.Options{
		SkipMalformed: cfg.SkipMalformed,
		Logger:        logger,
	})
	logger.Debug("opening tasks file", "path", file.Path(), "skip_malformed", cfg.SkipMalformed)
	return store.Open(file, store.WithLogger(logger))
}
