package testutil

import (
	"io"

	"github.com/mohammadpnp/contact-import/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0)
}
