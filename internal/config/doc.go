// Package config loads gottl configuration from YAML or JSON files.
//
// Values are applied on top of Default, so a file only needs the keys it
// changes. Durations are written as Go duration strings ("5s", "10m").
//
//	cache:
//	  ttl: 5s
//	  auto_clear: true
//	  sweep_interval: 10m
//	log:
//	  level: info
//	  format: text
//	  file: /var/log/gottl.log
package config
