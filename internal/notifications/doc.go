// Package notifications sends optional push notifications about sync runs
// through ntfy. With no topic configured every notification is a no-op.
package notifications
