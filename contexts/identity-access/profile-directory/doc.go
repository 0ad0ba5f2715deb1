// Package profiledirectory keeps the display profile attached to each
// principal. Profiles are self-managed and carry no authorization weight;
// record access is decided elsewhere.
package profiledirectory
