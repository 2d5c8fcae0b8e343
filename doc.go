// Package folio computes portfolio valuations, returns and risk statistics
// from user-entered positions and per-instrument price histories. It is
// designed as a pure computation layer: callers fetch prices and persist
// positions elsewhere, and the engine re-derives everything from the
// current snapshot on each call.
//
// The core functionalities include:
//   - Price Alignment: Building a dense, forward-filled valuation grid from
//     sparse per-instrument price series, without inventing prices where an
//     instrument has no history yet.
//   - Chained Returns: Computing a daily-chained, time-weighted return
//     series for the whole portfolio, immune to the size of cash injected.
//   - Period Gains: Slicing the valuation series into calendar periods and
//     isolating market performance from new contributions.
//   - XIRR: Solving for the money-weighted annualized rate of return over
//     irregular signed cash flows, with an explicit convergence status.
//   - Risk Metrics: CAGR, volatility, maximum drawdown, Sharpe, Alpha and
//     Beta versus an optional benchmark, plus horizon returns.
//
// All computations are deterministic and single-threaded over immutable
// in-memory inputs; the same snapshot always produces bit-identical results.
// This package serves as the foundational logic for the `fol` command-line
// tool.
package folio
