// Package config handles loading and validating Gray Logic Audio configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with GRAYLOGIC_AUDIO_* environment variables
//   - Validation of required fields and audio declarations
//   - Default value handling
//
// The audio section declares hardware modules, the devices each module can
// expose, and routing strategies. Device type, format and channel mask names
// use the AUDIO_DEVICE_/AUDIO_FORMAT_/AUDIO_CHANNEL_ spellings, with the
// prefix optional:
//
//	audio:
//	  modules:
//	    - name: primary
//	      devices:
//	        - tag_name: Speaker
//	          type: OUT_SPEAKER
//	          attached: true
//	        - tag_name: HDMI Out
//	          type: OUT_HDMI
//	  strategies:
//	    - name: media
//	      types: [OUT_BLUETOOTH_A2DP, OUT_HDMI, OUT_SPEAKER]
//
// Sensitive values (MQTT password, InfluxDB token) should be set via
// environment variables.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Site.Name)
package config
