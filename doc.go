// Package main provides the entry point of the dulha-dulhan.com back office.
// It serves a JSON api built on Fiber: a public profile registration endpoint,
// the list of services shown on the site, and admin endpoints for reviewing
// profiles and editing the notification settings. New registrations trigger
// email and WhatsApp notifications through a database outbox. The application
// uses gorm for persistence with MySQL, PostgreSQL or SQLite.
package main
