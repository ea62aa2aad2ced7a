package history

import "github.com/vcrobe/nojs-router/route"

// runQueue calls fn for each guard in order. fn hands control to the next
// guard by calling its second argument; done runs after the last one.
func runQueue(queue []route.Guard, fn func(route.Guard, func()), done func()) {
	var step func(i int)
	step = func(i int) {
		if i >= len(queue) {
			done()
			return
		}
		if queue[i] == nil {
			step(i + 1)
			return
		}
		fn(queue[i], func() { step(i + 1) })
	}
	step(0)
}

// resolveQueue splits two matched chains at the first record they do not
// share.
func resolveQueue(current, next []*route.Record) (updated, deactivated, activated []*route.Record) {
	i := 0
	for ; i < len(current) && i < len(next); i++ {
		if current[i] != next[i] {
			break
		}
	}
	return next[:i], current[i:], next[i:]
}

func enterGuards(records []*route.Record) []route.Guard {
	var guards []route.Guard
	for _, record := range records {
		if record.BeforeEnter != nil {
			guards = append(guards, record.BeforeEnter)
		}
	}
	return guards
}
