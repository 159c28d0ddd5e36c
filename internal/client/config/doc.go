// Package config loads runtime configuration for the technai CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-env, default ".env") and TECHNAI_* environment variables.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://technai.example.com",
//	  "db_path": "technai.db",
//	  "locale": "ko",
//	  "requests_per_second": 10,
//	  "toast_ttl": "3s"
//	}
package config
