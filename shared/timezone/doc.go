// Package timezone provides timezone utilities for the application.
//
// Usage Examples:
//
//  1. Basic usage after initialization:
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  2. Formatting times in app timezone:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//
//  3. Plain calendar dates (booking dates carry no time-of-day):
//     d, err := timezone.ParseDate("2025-06-01")
//     s := timezone.FormatDate(d)
//     today := timezone.Today()
//
// Supported timezone formats:
// - Standard timezone names only: "UTC", "Europe/Paris", "America/New_York"
//
// The timezone is configured via the APP_TIMEZONE environment variable
// and is automatically initialized when the package is imported.
// Use standard IANA timezone database names for reliable cross-platform compatibility.
package timezone
