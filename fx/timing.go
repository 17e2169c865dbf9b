package fx

// SamplesPerBeat converts tempo to samples, truncated toward zero.
// Tempo is clamped to at least 1 bpm.
func SamplesPerBeat(sampleRate, bpm float64) uint32 {
	if bpm < 1 {
		bpm = 1
	}
	if sampleRate <= 0 {
		return 0
	}
	return uint32(sampleRate * 60 / bpm)
}

// GridSamples is the length of one grid cell for a musical denominator
// (4 = quarter notes, 8 = eighths): spb*4 first, then the integer divide.
func GridSamples(samplesPerBeat uint32, divisions float64) uint32 {
	// Negative and NaN must not reach the uint32 conversion
	if !(divisions >= 1) {
		divisions = 1
	}
	return samplesPerBeat * 4 / uint32(divisions)
}

// SamplesPerTick converts sequencer ticks (ppq resolution) to samples
func SamplesPerTick(sampleRate, bpm float64, ppq uint16) float64 {
	if bpm < 1 {
		bpm = 1
	}
	if ppq == 0 {
		ppq = 1
	}
	return sampleRate * 60 / (bpm * float64(ppq))
}

// atLeastOne guards a grid size used as a divisor
func atLeastOne(v uint32) uint32 {
	if v < 1 {
		return 1
	}
	return v
}
