// Package core defines the shared language of leaptable.
//
// This package contains:
//   - The table model (Schema, Column, ColumnType)
//   - Adapter configuration and catalog metadata types
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
