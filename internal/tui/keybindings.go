package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// SetupKeyBindings configures keyboard input handling
func SetupKeyBindings(a *App) {
	a.tv.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// Let text fields receive every printable key
		if _, typing := a.tv.GetFocus().(*tview.InputField); typing {
			if event.Key() == tcell.KeyEscape {
				a.tv.SetFocus(a.list)
				return nil
			}
			return event
		}

		switch event.Key() {
		case tcell.KeyEscape:
			a.tv.SetFocus(a.list)
			return nil
		case tcell.KeyTab:
			if a.list.HasFocus() {
				if next := a.nextForm(); next != nil {
					a.tv.SetFocus(next)
					return nil
				}
			}
		}

		switch event.Rune() {
		case 'q':
			a.tv.Stop()
			return nil
		case 'a':
			if a.addShown {
				a.closeAddForm()
			} else {
				a.toggleAddForm()
			}
			return nil
		case 'j':
			// Move down in list
			if a.list.HasFocus() {
				if i := a.list.GetCurrentItem(); i < a.list.GetItemCount()-1 {
					a.list.SetCurrentItem(i + 1)
				}
				return nil
			}
		case 'k':
			// Move up in list
			if a.list.HasFocus() {
				if i := a.list.GetCurrentItem(); i > 0 {
					a.list.SetCurrentItem(i - 1)
				}
				return nil
			}
		}

		return event
	})
}

// nextForm returns the first visible form to move focus to from the list.
func (a *App) nextForm() tview.Primitive {
	if a.addShown && a.addForm != nil {
		return a.addForm
	}
	if a.splitFor != "" && a.splitForm != nil {
		return a.splitForm
	}
	return nil
}
