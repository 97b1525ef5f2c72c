// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (programs, transactions, keys, network settings) and
// contracts (resolvers, network clients) only.
package domain
