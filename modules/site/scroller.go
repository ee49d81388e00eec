package site

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/velveproduce/site/handler"
)

// scriptScroller scrolls the browser by pushing scripts down the request's
// event stream.
type scriptScroller struct {
	stream handler.StreamContext
}

func (s scriptScroller) ScrollIntoView(_ context.Context, id string) error {
	quoted, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.stream.ExecuteScript(fmt.Sprintf("document.getElementById(%s)?.scrollIntoView({behavior:'smooth'})", quoted))
}

func (s scriptScroller) ScrollTop(context.Context) error {
	return s.stream.ExecuteScript("window.scrollTo({top:0,behavior:'smooth'})")
}
