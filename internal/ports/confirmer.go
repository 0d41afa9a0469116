package ports

// Confirmer is a synchronous yes/no gate presented to the operator before a
// destructive action proceeds.
type Confirmer interface {
	Confirm(prompt string) bool
}
