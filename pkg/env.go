package pkg

import envutil "github.com/projectdiscovery/utils/env"

var (
	DefaultScanScript = envutil.GetEnvOrDefault("SCANMYLAN_SCRIPT", "./scan.sh")
)
