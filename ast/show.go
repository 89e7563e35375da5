package ast

import (
	"fmt"
	"io"
)

// ShowClassList writes the name of every class in list, in order.
func ShowClassList(w io.Writer, list *ClassList) error {
	for _, c := range list.All() {
		if _, err := fmt.Fprintf(w, "Class: %s\n", c.Name()); err != nil {
			return err
		}
	}
	return nil
}
