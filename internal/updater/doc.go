// Package updater implements boil's update notifier. It compares the running
// version with the latest GitHub release, caches the answer for a day and
// prints a banner when a newer release exists. It never downloads anything.
package updater
