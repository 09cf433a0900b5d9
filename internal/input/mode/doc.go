// Package mode tracks which editing mode is active.
//
// Only the modes that change how a text object is applied are modelled:
// normal, the three visual modes and operator-pending. A Switch runs the
// old mode's Exit hook, then the new mode's Enter hook, and finally the
// listeners registered with OnChange. Extra modes can be added with
// Register.
package mode
