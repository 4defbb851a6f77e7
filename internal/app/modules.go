package app

import (
	"github.com/vk/phaserun/internal/registry"
	"github.com/vk/phaserun/modules/cistatus"
	"github.com/vk/phaserun/modules/command"
	"github.com/vk/phaserun/modules/coverage"
	"github.com/vk/phaserun/modules/filegen"
	"github.com/vk/phaserun/modules/health"
	"github.com/vk/phaserun/modules/manual"
)

// coreModules is the definitive list of capability modules compiled into
// the phaserun binary.
var coreModules = []registry.Module{
	&command.Module{},
	&filegen.Module{},
	&manual.Module{},
	&coverage.Module{},
	&cistatus.Module{},
	&health.Module{},
}
