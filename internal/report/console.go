package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vk/phaserun/internal/config"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	bannerBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

var priorityMarks = map[string]string{
	config.PriorityCritical: "!!",
	config.PriorityHigh:     " !",
	config.PriorityMedium:   "  ",
	config.PriorityLow:      " .",
}

// Console renders lifecycle notifications as styled terminal output. All
// writes go through a mutex because task callbacks arrive from parallel
// goroutines.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	clock func() time.Time

	startedAt  time.Time
	phaseStart map[string]time.Time
	groupStart map[string]time.Time
	taskStart  map[string]time.Time
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:          w,
		clock:      time.Now,
		phaseStart: make(map[string]time.Time),
		groupStart: make(map[string]time.Time),
		taskStart:  make(map[string]time.Time),
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

func (c *Console) StartOrchestration(plan *config.Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startedAt = c.clock()

	taskCount := 0
	for _, phase := range plan.Phases {
		for _, group := range phase.Groups {
			taskCount += len(group.Tasks)
		}
	}

	banner := fmt.Sprintf("%s %s\n%s",
		headerStyle.Render(plan.Settings.Name),
		dimStyle.Render(plan.Settings.Version),
		dimStyle.Render(fmt.Sprintf("%d phases, %d tasks", len(plan.Phases), taskCount)))
	c.printf("%s", bannerBorder.Render(banner))
}

func (c *Console) CompleteOrchestration(results map[string]*config.TaskResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	succeeded, failed := 0, 0
	for _, res := range results {
		if res.Success {
			succeeded++
		} else {
			failed++
		}
	}

	elapsed := c.clock().Sub(c.startedAt).Round(time.Millisecond)
	summary := fmt.Sprintf("%s  %s  %s",
		okStyle.Render(fmt.Sprintf("ok %d", succeeded)),
		failStyle.Render(fmt.Sprintf("failed %d", failed)),
		dimStyle.Render(elapsed.String()))
	c.printf("%s", bannerBorder.Render(summary))

	if failed > 0 {
		c.printf("%s", failStyle.Render("failed tasks:"))
		ids := make([]string, 0, failed)
		for id, res := range results {
			if !res.Success {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		for _, id := range ids {
			c.printf("  %s %s", failStyle.Render("✗"), fmt.Sprintf("[%s] %s", id, results[id].Error))
		}
	}
}

func (c *Console) StartPhase(phaseID string, phase *config.Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phaseStart[phaseID] = c.clock()

	c.printf("\n%s %s", phaseStyle.Render("▶ "+strings.ToUpper(phaseID)), phase.Name)
	if phase.Description != "" {
		c.printf("  %s", dimStyle.Render(phase.Description))
	}
}

func (c *Console) CompletePhase(phaseID string, success bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.since(c.phaseStart, phaseID)
	if success {
		c.printf("%s %s %s", okStyle.Render("✓"), strings.ToUpper(phaseID), dimStyle.Render(elapsed))
		return
	}
	c.printf("%s %s %s", failStyle.Render("✗"), strings.ToUpper(phaseID), dimStyle.Render(elapsed))
	if err != nil {
		c.printf("  %s", failStyle.Render(err.Error()))
	}
}

func (c *Console) StartGroup(groupID string, group *config.Group) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groupStart[groupID] = c.clock()

	mode := "sequential"
	if group.Execution == config.ExecutionParallel {
		mode = fmt.Sprintf("parallel ×%d", group.MaxParallel)
	}
	c.printf("  %s %s %s", headerStyle.Render(groupID), group.Name, dimStyle.Render("["+mode+"]"))
	if len(group.DependsOn) > 0 {
		c.printf("    %s", dimStyle.Render("after: "+strings.Join(group.DependsOn, ", ")))
	}
}

func (c *Console) CompleteGroup(groupID string, success bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.since(c.groupStart, groupID)
	if success {
		c.printf("  %s %s %s", okStyle.Render("✓"), groupID, dimStyle.Render(elapsed))
		return
	}
	c.printf("  %s %s %s", failStyle.Render("✗"), groupID, dimStyle.Render(elapsed))
	if err != nil {
		c.printf("    %s", failStyle.Render(err.Error()))
	}
}

func (c *Console) StartTask(task *config.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.taskStart[task.ID] = c.clock()

	mark := priorityMarks[task.Priority]
	if mark == "" {
		mark = "  "
	}
	c.printf("    %s [%s] %s %s", mark, task.ID, task.Name, dimStyle.Render("("+task.Type+")"))
}

func (c *Console) CompleteTask(task *config.Task, result *config.TaskResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := c.since(c.taskStart, task.ID)
	if result.Success {
		c.printf("    %s [%s] %s", okStyle.Render("✓"), task.ID, dimStyle.Render(elapsed))
		if result.Message != "" {
			c.printf("      %s", dimStyle.Render(result.Message))
		}
		return
	}
	c.printf("    %s [%s] %s", failStyle.Render("✗"), task.ID, dimStyle.Render(elapsed))
	if result.Error != "" {
		c.printf("      %s", failStyle.Render(result.Error))
	}
}

func (c *Console) StartCheckpoint(key string, checkpoint *config.Checkpoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.printf("\n%s %s", warnStyle.Render("● checkpoint"), checkpoint.Name)
}

func (c *Console) CompleteCheckpoint(key string, passed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if passed {
		c.printf("%s checkpoint %s", okStyle.Render("✓"), key)
		return
	}
	c.printf("%s checkpoint %s", failStyle.Render("✗"), key)
}

func (c *Console) since(starts map[string]time.Time, id string) string {
	start, ok := starts[id]
	if !ok {
		return ""
	}
	delete(starts, id)
	return c.clock().Sub(start).Round(time.Millisecond).String()
}
