// Package codegen lowers a structured program to stump assembly in two
// passes over one Context.
//
// Pass 1 records every function's arity and emits the data of every global,
// so calls and variable references may name declarations that appear later
// in the file. Pass 2 lowers the function bodies in declaration
// order. Register conventions: r0 reads as zero, r1..r4 are free, r5 (lr)
// holds the return address, r6 (sf) points at the current frame and r7 is
// the program counter.
package codegen
