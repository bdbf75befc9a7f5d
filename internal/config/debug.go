package config

import "os"

func IsDebug() bool {
	return os.Getenv("COREGATE_DEBUG") == "1"
}
