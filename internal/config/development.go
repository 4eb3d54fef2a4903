package config

import "os"

// Development reports whether DEVELOPMENT is set to anything but "0".
func Development() bool {
	return envBool("DEVELOPMENT")
}

func envBool(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	return v != "0" && v != ""
}
