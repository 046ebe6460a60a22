package main

import "github.com/milk9111/hitboxer/common"

// player steps through frames at a fixed tick rate.
type player struct {
	count       int
	current     int
	tickCount   int
	ticksPerFrm int
	paused      bool
}

func newPlayer(count, fps int) player {
	return player{count: count, ticksPerFrm: ticksPerFrame(fps)}
}

// ticksPerFrame converts fps to game ticks at 60 TPS.
func ticksPerFrame(fps int) int {
	if fps <= 0 {
		return 1
	}
	ticks := 60 / fps
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (p *player) tick() {
	if p.paused || p.count <= 1 {
		return
	}
	p.tickCount++
	if p.tickCount >= p.ticksPerFrm {
		p.tickCount = 0
		p.current = common.CyclicIncrement(p.current, p.count)
	}
}

// step moves one frame forward or back and pauses playback.
func (p *player) step(dir int) {
	if p.count == 0 {
		return
	}
	p.paused = true
	p.tickCount = 0
	if dir < 0 {
		p.current = common.CyclicDecrement(p.current, p.count)
	} else {
		p.current = common.CyclicIncrement(p.current, p.count)
	}
}
