package rail

import "github.com/samber/mo"

// Step is a keyboard seek command.
type Step int

const (
	StepBackward Step = iota
	StepForward
	StepHome
	StepEnd
)

func (s Step) String() string {
	switch s {
	case StepBackward:
		return "backward"
	case StepForward:
		return "forward"
	case StepHome:
		return "home"
	case StepEnd:
		return "end"
	default:
		return "unknown"
	}
}

// OnKeyStep commits a keyboard seek. Targets before the start or at/after the
// end pause playback and land just before the end instead of being passed
// through. Every step is reported as handled so the host suppresses the key's
// default action; playback errors are logged and swallowed.
func (c *Controller) OnKeyStep(step Step, current float64, duration mo.Option[float64]) bool {
	var (
		target float64
		toEnd  bool
	)

	switch step {
	case StepBackward:
		target = current - c.options.SeekStep
	case StepForward:
		target = current + c.options.SeekStep
	case StepHome:
		target = 0
	case StepEnd:
		toEnd = true
	default:
		return false
	}

	d, known := knownDuration(duration)
	overshoot := toEnd || target < 0 || (known && target >= d)

	if !overshoot {
		if err := c.media.SetCurrentTime(target); err != nil {
			c.logger.Warnf("key seek %s to %.2f: %v", step, target, err)
		}
		return true
	}

	if !known {
		c.logger.Debugf("key seek %s ignored: duration unknown", step)
		return true
	}

	if err := c.media.Pause(); err != nil {
		c.logger.Warnf("key seek %s pause: %v", step, err)
	}
	if err := c.media.SetCurrentTime(d - NearEnd); err != nil {
		c.logger.Warnf("key seek %s to end: %v", step, err)
	}
	return true
}
