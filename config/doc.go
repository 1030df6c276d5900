// File: doc.go — see config.go for Config/Option/Default/New/Validate,
// viper.go for Load (file/env-backed construction).
package config
