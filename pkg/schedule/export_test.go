package schedule

import "time"

func (s *Scheduler) SetTick(d time.Duration) { s.tick = d }
