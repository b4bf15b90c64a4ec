package bytecode

// OverwriteConstant replaces a constant in place. Only tests use this, to
// build cyclic unit graphs that the immutable constructor cannot express.
func OverwriteConstant(c *Code, index int, value any) {
	c.constants[index] = value
}
