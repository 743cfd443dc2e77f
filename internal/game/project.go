package game

// MaxProjectTime is the time cap a winning task plan must fit inside.
const MaxProjectTime = 8

// ProjectTask is one deliverable with its value and time cost.
type ProjectTask struct {
	Name      string
	Points    int
	Time      int
	Completed bool
}

// Project is the fallback game for roles without a dedicated variant:
// complete every task without blowing the time cap.
type Project struct {
	Scenario string
	Tasks    []ProjectTask
	TimeUsed int
}

func newProject() *Project {
	return &Project{
		Scenario: "You're managing a creative project launch. Complete all tasks within the time limit.",
		Tasks: []ProjectTask{
			{Name: "Finalize creative brief", Points: 15, Time: 2},
			{Name: "Coordinate with design team", Points: 20, Time: 1},
			{Name: "Review budget approval", Points: 15, Time: 1},
			{Name: "Schedule launch campaign", Points: 25, Time: 2},
		},
	}
}

// allDone reports whether every task has been completed.
func (p *Project) allDone() bool {
	for _, t := range p.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// ProjectOutcome describes the effect of completing one task.
type ProjectOutcome struct {
	Points   int
	RoundWon bool
	OverTime bool // all tasks done but the plan exceeded the cap
}

// CompleteTask marks a task done, scores its points, and spends its time.
// Completing an already-done task is a no-op. Finishing the last task
// wins the round only if total time stayed within the cap.
func (s *Session) CompleteTask(name string) ProjectOutcome {
	p := s.Project
	if p == nil {
		return ProjectOutcome{}
	}
	var task *ProjectTask
	for i := range p.Tasks {
		if p.Tasks[i].Name == name {
			task = &p.Tasks[i]
		}
	}
	if task == nil || task.Completed {
		return ProjectOutcome{}
	}
	task.Completed = true
	p.TimeUsed += task.Time
	s.Score += task.Points
	if !p.allDone() {
		return ProjectOutcome{Points: task.Points}
	}
	if p.TimeUsed > MaxProjectTime {
		return ProjectOutcome{Points: task.Points, OverTime: true}
	}
	s.Level++
	s.Project = newProject()
	return ProjectOutcome{Points: task.Points, RoundWon: true}
}
