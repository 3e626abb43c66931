package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按生物群系名称创建场景，避免循环依赖
type SceneFactory func(biome string) Scene

// SceneManager manages which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene.
// 旧场景实现 Leavable 时先调用 OnLeave。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if leavable, ok := sm.currentScene.(Leavable); ok {
		leavable.OnLeave()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadBiome 切换到指定生物群系的场景
func (sm *SceneManager) LoadBiome(biome string) {
	log.Printf("[SceneManager] Loading biome: %s", biome)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return
	}

	newScene := sm.sceneFactory(biome)
	if newScene == nil {
		log.Printf("[SceneManager] Error: cannot create scene for biome %s", biome)
		return
	}
	sm.SwitchTo(newScene)
}

// SaveCurrent 当前场景实现 Saveable 时保存，返回是否成功（无需保存视为成功）
func (sm *SceneManager) SaveCurrent() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
