package handler

import (
	"github.com/portalkit/gridview/core"
	"github.com/portalkit/gridview/logging"
)

type eventBus struct {
	log *logging.Logger
}

func (eb *eventBus) ViewEvent(name string, id core.ViewID, ev core.Event) {
	switch ev.Kind {
	case core.EventFilterChanged:
		eb.log.Debugf("view %q (%s): %s %q = %v", name, id, ev.Kind, ev.Key, ev.Value)
	case core.EventSearchChanged:
		eb.log.Debugf("view %q (%s): %s %q", name, id, ev.Kind, ev.Value)
	default:
		eb.log.Debugf("view %q (%s): %s", name, id, ev.Kind)
	}
}

func (eb *eventBus) ViewLoaded(name string, id core.ViewID, rows int) {
	eb.log.Infof("view %q (%s): loaded %d rows", name, id, rows)
}
