// Package rowan is an immediate-mode 2D sprite and animation library for
// [Ebitengine].
//
// Rowan provides frame-based animation clips with a playback state machine,
// sprites with position/rotation/scale/flip transforms, rect and circle
// hitboxes with rotation-aware collision testing, edge-detecting input,
// scenes, cameras, simple physics bodies, and a fixed-rate game loop.
//
// # Quick start
//
// [Game.Run] creates a window and drives the loop for you:
//
//	game := rowan.NewGame(640, 480, "My Game")
//
//	atlas, _ := rowan.NewAtlas(sheet, 32, 32)
//	player := rowan.NewSprite(atlas, 320, 240)
//	player.AddAnimation("walk", []int{0, 1, 2, 3}, 10, true)
//	player.Play("walk", false)
//	game.AddSprite(player)
//
//	game.Run(func() {
//		if game.Input().Pressed(rowan.KeyRight) {
//			player.Move(120*game.DeltaTime(), 0)
//		}
//	}, nil)
//
// Sprites added with [Game.AddSprite] are updated and drawn automatically;
// everything else happens in the update and draw callbacks.
//
// # Animation
//
// A [Clip] is a named list of atlas frame indices with a playback rate.
// Each [Sprite] owns a [Player] that advances the active clip by wall-clock
// delta time, looping or stopping on the last frame. [Sprite.Play] switches
// clips; replaying the active clip is a no-op unless restart is requested.
//
// # Collision
//
// Every sprite has a hitbox, by default a rect matching its scaled frame.
// [Sprite.SetHitboxRect] and [Sprite.SetHitboxCircle] override it.
// [Sprite.CollidesWith] picks the right test per shape pair: circle
// distance, circle-polygon, or separating-axis for rotated rects.
// [Sprite.DebugDraw] outlines hitboxes for tuning.
//
// # Key features
//
// Rowan also includes a pushdown scene stack ([SceneManager]), a camera
// with follow and scroll-to (via [gween]), YAML sheet definitions with hot
// reload, property tweens, and [Body] for gravity/friction/bounce movement.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package rowan
