// Package analysis characterizes recorded metric series.
//
//   - [PowerSpectrum] and [DominantPeriod]: oscillation content of a series
//   - [SpringResponse]: period and decay the spring-damper recurrence predicts
//   - [SettleTime]: ticks until a series reaches a threshold
//
// # Example
//
//	period, _ := analysis.DominantPeriod(result.Series("target_distance"))
//	want := analysis.SpringResponse(0.08, 0.92)
//	fmt.Printf("measured %.1f ticks, predicted %.1f\n", period, want.Period)
package analysis
