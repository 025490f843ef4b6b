package config

import "os"

// BalanceFromEnv returns the balance preset selected by the DIFFICULTY
// environment variable, defaulting to the standard balance.
func BalanceFromEnv() Balance {
	switch os.Getenv("DIFFICULTY") {
	case "casual":
		return Casual()
	case "hard":
		return Hard()
	default:
		return Default()
	}
}
