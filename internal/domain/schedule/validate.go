package schedule

import "fmt"

// Validate checks a custom shift map supplied by the employee collaborator.
func (c CustomShift) Validate() error {
	for day, window := range c {
		known := false
		for _, name := range WeekdayNames {
			if name == day {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: %q", ErrInvalidWeekdayName, day)
		}
		if _, err := ParseTimeOfDay(window.Start); err != nil {
			return err
		}
		if _, err := ParseTimeOfDay(window.End); err != nil {
			return err
		}
	}
	return nil
}
