// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and Markdown issue pages.
//
// ActionableError carries the failed operation, the resource involved and
// suggestions; commands print it with Format. Issue pages are longer
// troubleshooting notes rendered with glamour.
package issue
