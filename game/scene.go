package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cloner/components"
)

// reconcileGrid mirrors the grid cloner's output into the ECS scene.
func (g *Game) reconcileGrid(clones []components.CloneTransform) {
	g.reconcile(clones, g.gridEntities, sourceGrid)
}

// reconcileFracture mirrors the fracture group's output into the ECS scene.
func (g *Game) reconcileFracture(clones []components.CloneTransform) {
	g.reconcile(clones, g.fractureEntities, sourceFracture)
}

// reconcile diffs one generator's output against its existing entities:
// update in place, create for new keys, remove for vanished keys.
func (g *Game) reconcile(clones []components.CloneTransform, entities map[components.CloneKey]ecs.Entity, source int) {
	seen := make(map[components.CloneKey]bool, len(clones))

	for i := range clones {
		cl := &clones[i]
		seen[cl.Key] = true

		meta := components.CloneMeta{
			Key:           cl.Key,
			Source:        source,
			Index:         cl.Index,
			TemplateIndex: cl.TemplateIndex,
			Hidden:        cl.Hidden,
			HasColor:      cl.HasColor,
			Color:         cl.Color,
			EntityID:      cl.EntityID,
		}
		if source == sourceGrid {
			meta.Frozen = g.grid.IsFrozen(cl.Key)
		}

		if e, ok := entities[cl.Key]; ok {
			pos := g.posMap.Get(e)
			pos.X, pos.Y, pos.Z = cl.Position.X, cl.Position.Y, cl.Position.Z
			rot := g.rotMap.Get(e)
			rot.X, rot.Y, rot.Z = cl.Rotation.X, cl.Rotation.Y, cl.Rotation.Z
			scl := g.sclMap.Get(e)
			scl.X, scl.Y, scl.Z = cl.Scale.X, cl.Scale.Y, cl.Scale.Z
			*g.metaMap.Get(e) = meta
			continue
		}

		pos := components.Position{X: cl.Position.X, Y: cl.Position.Y, Z: cl.Position.Z}
		rot := components.Rotation{X: cl.Rotation.X, Y: cl.Rotation.Y, Z: cl.Rotation.Z}
		scl := components.Scale{X: cl.Scale.X, Y: cl.Scale.Y, Z: cl.Scale.Z}
		entities[cl.Key] = g.cloneMapper.NewEntity(&pos, &rot, &scl, &meta)
	}

	for key, e := range entities {
		if !seen[key] {
			g.cloneMapper.Remove(e)
			delete(entities, key)
		}
	}
}
