package app

import (
	"github.com/vk/wetware/internal/registry"
	"github.com/vk/wetware/modules/compute"
	"github.com/vk/wetware/modules/metabolism"
	"github.com/vk/wetware/modules/power"
)

// coreModules is the definitive list of all component variants compiled
// into the wetware binary.
var coreModules = []registry.Module{
	&power.Module{},
	&metabolism.Module{},
	&compute.Module{},
}
