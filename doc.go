// Package cartera values a personal investment portfolio from point in time
// JSON snapshots. It is designed to be stateless: every report is recomputed
// from the snapshots on each call.
//
// The core functionalities include:
//   - Position Replay: folding the buy, sell and dividend transactions of a
//     ticker into its open quantity, moving average cost, realized and
//     unrealized PnL.
//   - Movements: filtering, sorting and paginating transactions, with the PnL
//     realized over a date range.
//   - Allocation: splitting the portfolio value by sector, country or currency.
//   - Correlation: correlating the daily returns of the held tickers.
//
// This package serves as the foundational logic for the `cartera` command-line
// tool and its web server.
package cartera
