// Package config defines the application's configuration structures and
// loads them from config files and environment variables.
package config
