package renderer

import "github.com/Carmen-Shannon/oxy-triangle/common"

// ColorAttachment describes the single color target of a render pass.
type ColorAttachment struct {
	Texture     Texture
	LoadAction  common.LoadAction
	StoreAction common.StoreAction
	ClearColor  common.Color
}

// RenderPassDescriptor describes the attachments of one render pass. It lives for one frame.
type RenderPassDescriptor struct {
	ColorAttachments []ColorAttachment
}

// NewRenderPassDescriptor builds a pass that clears texture to clear and stores the result.
//
// Parameters:
//   - texture: the drawable texture
//   - clear: the clear color
//
// Returns:
//   - *RenderPassDescriptor: the descriptor with one color attachment
func NewRenderPassDescriptor(texture Texture, clear common.Color) *RenderPassDescriptor {
	return &RenderPassDescriptor{
		ColorAttachments: []ColorAttachment{{
			Texture:     texture,
			LoadAction:  common.LoadActionClear,
			StoreAction: common.StoreActionStore,
			ClearColor:  clear,
		}},
	}
}
