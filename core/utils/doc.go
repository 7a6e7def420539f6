// Package utils provides common utility functions for the wish-archive application.
// It includes lenient conversion helpers for the string-encoded numbers returned
// by the gacha log API.
package utils
