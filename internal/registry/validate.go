package registry

import (
	"sort"

	"github.com/vk/phaserun/internal/config"
)

// UnknownTaskTypes returns the task type tags declared in the plan that have
// no registered handler, in ascending order. Such tasks fail at dispatch
// time, not at startup; the caller surfaces these as warnings so a partial
// run is still possible.
func (r *Registry) UnknownTaskTypes(plan *config.Plan) []string {
	seen := make(map[string]struct{})
	for _, phase := range plan.Phases {
		for _, group := range phase.Groups {
			for _, task := range group.Tasks {
				if _, ok := r.taskHandlers[task.Type]; !ok {
					seen[task.Type] = struct{}{}
				}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// UnknownCheckKinds returns the validation kinds declared in the plan that
// have no registered check. Unknown kinds pass by default at run time, so
// these are startup warnings only.
func (r *Registry) UnknownCheckKinds(plan *config.Plan) []string {
	seen := make(map[string]struct{})
	for _, cp := range plan.Checkpoints {
		for _, v := range cp.Validations {
			if _, ok := r.checkHandlers[v.Kind]; !ok {
				seen[v.Kind] = struct{}{}
			}
		}
	}

	if len(seen) == 0 {
		return nil
	}
	kinds := make([]string, 0, len(seen))
	for k := range seen {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
