// Command optgroup renders grouped select forms from the terminal.
//
//	optgroup render --lang de-DE > form.html
//	optgroup prompt --format pretty
//	optgroup options --query kale
//
// Without --form the bundled lunch order example is used.
package main

func main() {
	Execute()
}
