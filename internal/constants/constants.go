// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.2-" + runtime.GOOS + "/" + runtime.GOARCH

// ServiceName identifies the service in health responses and logs.
const ServiceName = "ECG Sleep Apnea Detection API"
