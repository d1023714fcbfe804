// ABOUTME: Synthetic variable set and waveform generator for the CLI demo
// ABOUTME: No VCD/FST parser exists in this module; signals are generated

package demo

import (
	"github.com/wavecore/timeline/internal/cache"
	"github.com/wavecore/timeline/internal/collab"
	"github.com/wavecore/timeline/internal/timeps"
)

// filePath is the synthetic file all demo variables belong to.
const filePath = "demo.vcd"

// DurationNs is the total simulated trace length: 1ms at a 10ns clock period.
const DurationNs = 1_000_000

// Variables returns the fixed selected-variable set the demo drives: a
// clock, an active-low reset pulse, and a free-running counter bus.
func Variables() []collab.SelectedVariable {
	return []collab.SelectedVariable{
		{Id: cache.MustParseVariableId(filePath + "|tb.dut|clk"), Formatter: cache.FormatBinary},
		{Id: cache.MustParseVariableId(filePath + "|tb.dut|reset_n"), Formatter: cache.FormatBinary},
		{Id: cache.MustParseVariableId(filePath + "|tb.dut|count"), Formatter: cache.FormatDecimal},
	}
}

// Bounds returns the demo trace's full time extent.
func Bounds() *timeps.Bounds {
	return &timeps.Bounds{Start: 0, End: timeps.FromNanos(DurationNs)}
}

// Generate synthesizes the transitions for variable name over [startNs,
// endNs), clipped to the trace's declared bounds. Each signal is a pure
// function of time so results are reproducible across requests.
func Generate(variable string, startNs, endNs uint64) []cache.SignalTransition {
	if endNs > DurationNs {
		endNs = DurationNs
	}
	if startNs >= endNs {
		return nil
	}
	switch variable {
	case "clk":
		return clockTransitions(startNs, endNs)
	case "reset_n":
		return resetTransitions(startNs, endNs)
	case "count":
		return counterTransitions(startNs, endNs)
	default:
		return nil
	}
}

const clockPeriodNs = 10

// clockTransitions toggles every half-period, starting Low at t=0.
func clockTransitions(startNs, endNs uint64) []cache.SignalTransition {
	half := uint64(clockPeriodNs / 2)
	first := (startNs / half) * half
	var out []cache.SignalTransition
	for t := first; t < endNs; t += half {
		edge := (t / half) % 2
		value := "0"
		if edge == 1 {
			value = "1"
		}
		out = append(out, cache.SignalTransition{TimeNs: t, Value: value})
	}
	return out
}

// resetAssertedUntilNs is the width of the initial active-low reset pulse.
const resetAssertedUntilNs = 55

// resetTransitions holds reset_n Low until resetAssertedUntilNs, then High
// for the rest of the trace.
func resetTransitions(startNs, endNs uint64) []cache.SignalTransition {
	var out []cache.SignalTransition
	if startNs == 0 {
		out = append(out, cache.SignalTransition{TimeNs: 0, Value: "0"})
	}
	if startNs <= resetAssertedUntilNs && endNs > resetAssertedUntilNs {
		out = append(out, cache.SignalTransition{TimeNs: resetAssertedUntilNs, Value: "1"})
	}
	return out
}

// counterTransitions increments a 4-bit counter on every rising clock edge
// once past the reset pulse, wrapping at 16; held at "x" while reset.
func counterTransitions(startNs, endNs uint64) []cache.SignalTransition {
	firstRising := (startNs/clockPeriodNs)*clockPeriodNs + clockPeriodNs/2
	if firstRising <= startNs {
		firstRising += clockPeriodNs
	}
	var out []cache.SignalTransition
	if startNs == 0 {
		out = append(out, cache.SignalTransition{TimeNs: 0, Value: "x"})
	}
	for t := firstRising; t < endNs; t += clockPeriodNs {
		if t <= resetAssertedUntilNs {
			continue
		}
		n := (t / clockPeriodNs) % 16
		out = append(out, cache.SignalTransition{TimeNs: t, Value: decimalString(n)})
	}
	return out
}

func decimalString(n uint64) string {
	digits := "0123456789"
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{digits[n%10]}, b...)
		n /= 10
	}
	return string(b)
}
