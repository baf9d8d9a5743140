// Package const holds small formatting constants shared by config encoders.
package configconst

// JSONIndent is the indent string used when pretty-printing JSON config.
const JSONIndent = "  "
