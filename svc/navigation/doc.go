// Package navigation holds the per-visitor page state: locale, current page
// and the landing section in view.
//
// Navigation is split in two steps. NavigateTo switches the page and returns
// a Transition; the browser renders the new page and reports back through
// Mounted, after which Transition.Await performs the scroll on a Scroller:
//
//	t, err := ctrl.NavigateTo(navigation.Landing, "services")
//	if err != nil {
//		return err
//	}
//	// render, then wait for ctrl.Mounted(navigation.Landing, seq)
//	err = t.Await(ctx, scroller)
//
// While the landing page is mounted, the controller registers every section
// on an Observer. Reports at or above the threshold (0.5 by default) make
// that section active; the most recent report wins. Leaving the landing page
// unregisters all sections.
package navigation
