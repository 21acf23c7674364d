package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskdeck configuration file
# Values can be overridden by TASKDECK_* environment variables or CLI flags

# Base URL of the task seed API (fetched once, when the database is empty)
api_base_url = "https://dummyjson.com"

# Import seed tasks when the database is empty
import_on_empty = true

# Task database (supports ~ expansion)
db_path = "~/.taskdeck/tasks.db"

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
`
}
