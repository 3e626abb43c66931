package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/gonewx/riverbank/pkg/config"
)

// 音效资源 ID
const (
	SoundCast   = "SOUND_CAST"
	SoundBite   = "SOUND_BITE"
	SoundHooked = "SOUND_HOOKED"
	SoundCatch  = "SOUND_CATCH"
	SoundEscape = "SOUND_ESCAPE"
	SoundSplash = "SOUND_SPLASH"
)

// AudioSampleRate 音频上下文采样率
const AudioSampleRate = 48000

// SoundPlayer 按资源 ID 播放音效
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// AudioManager 音频管理器
// 职责：
//   - 按资源 ID 缓存音效数据，每次播放创建一个新的播放器
//   - 从 SettingsManager 读取音量和开关
//
// audio.Context 为 nil 时所有播放都返回 false（无声模式，用于测试和无音频设备的环境）。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	clips           map[string][]byte // 资源ID -> 16 位小端立体声 PCM
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil
//   - sm: 设置管理器，可为 nil（使用默认音量）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		clips:           make(map[string][]byte),
	}
}

// RegisterClip 注册音效 PCM 数据（覆盖同 ID 的旧数据）
func (am *AudioManager) RegisterClip(soundID string, pcm []byte) {
	am.clips[soundID] = pcm
}

// HasClip 是否已注册该音效
func (am *AudioManager) HasClip(soundID string) bool {
	_, ok := am.clips[soundID]
	return ok
}

// RegisterFishingClips 注册钓鱼音效（程序合成的短音）
func (am *AudioManager) RegisterFishingClips() {
	am.RegisterClip(SoundCast, SynthesizeTone(AudioSampleRate, 520, 0.12, 0.5))
	am.RegisterClip(SoundBite, SynthesizeTone(AudioSampleRate, 880, 0.08, 0.6))
	am.RegisterClip(SoundHooked, SynthesizeTone(AudioSampleRate, 660, 0.25, 0.6))
	am.RegisterClip(SoundCatch, SynthesizeTone(AudioSampleRate, 1046, 0.4, 0.5))
	am.RegisterClip(SoundEscape, SynthesizeTone(AudioSampleRate, 196, 0.45, 0.5))
	am.RegisterClip(SoundSplash, SynthesizeTone(AudioSampleRate, 330, 0.1, 0.4))
	log.Printf("[AudioManager] Registered %d clips", len(am.clips))
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	pcm, ok := am.clips[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return false
	}
	if am.context == nil {
		return false
	}

	player := am.context.NewPlayerFromBytes(pcm)
	player.SetVolume(am.GetSoundVolume())
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量，影响后续播放的音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// SynthesizeTone 合成一段正弦波音效
//
// 输出 16 位小端立体声 PCM，音量在结尾线性淡出，避免爆音。
func SynthesizeTone(sampleRate int, freq, seconds, volume float64) []byte {
	if sampleRate <= 0 || seconds <= 0 {
		return nil
	}
	samples := int(float64(sampleRate) * seconds)
	buf := make([]byte, samples*4)

	for i := 0; i < samples; i++ {
		fade := 1 - float64(i)/float64(samples)
		v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * volume * fade
		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)

		binary.LittleEndian.PutUint16(buf[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(s))
	}
	return buf
}

// BindFishingSounds 把钓鱼事件映射到音效
func BindFishingSounds(player SoundPlayer) FishingEvents {
	return FishingEvents{
		OnCast: func(*config.BaitDefinition, *config.HookDefinition) {
			player.PlaySound(SoundCast)
		},
		OnBiteStarted: func() {
			player.PlaySound(SoundBite)
		},
		OnFishHooked: func(config.FishCatch) {
			player.PlaySound(SoundHooked)
		},
		OnCatchCompleted: func(CaughtFish) {
			player.PlaySound(SoundCatch)
		},
		OnFishEscaped: func(config.FishCatch) {
			player.PlaySound(SoundEscape)
		},
	}
}
