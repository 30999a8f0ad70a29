package runner

import (
	"github.com/oa-devs/ScanMyLAN/pkg/version"
	"github.com/projectdiscovery/gologger"
)

const banner = `
   ____                 __  ___     __   ___   _  __
  / __/______ ____  __ /  |/  /_ __/ /  / _ | / |/ /
 _\ \/ __/ _ '/ _ \/ // /|_/ / // / /__/ __ |/    / 
/___/\__/\_,_/_//_/\_, /_/  /_/\_, /____/_/ |_/_/|_/  
                  /___/       /___/                  
`

// showBanner prints the tool banner
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tLocal Port Scanner - Mac/Linux Edition %s\n\n", version.GetVersion())
}
